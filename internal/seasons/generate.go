package seasons

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/chrissnell/seasonswap/internal/season"
	"github.com/chrissnell/seasonswap/internal/store"
	"github.com/chrissnell/seasonswap/internal/swap"
	"go.uber.org/zap"
)

// MainTableName names the generated winter table, in the store and as the candidates file.
var MainTableName = swap.MainFilePrefix + "_" + season.Winter.Suffix()

// GenerateMainSwaps loads the persisted winter table, or builds it from the candidates file when
// nothing is persisted or the number of installed content packages changed since it was built.
// changed reports whether a new table was written back to the store. A missing candidates file
// leaves the persisted table in place.
func GenerateMainSwaps(ctx context.Context, st *store.Store, candidatesPath string, logger *zap.SugaredLogger) (gen *swap.Generated, changed bool, err error) {
	gen = swap.NewGenerated()

	if st != nil {
		blob, err := st.Generated(ctx, MainTableName)
		switch {
		case errors.Is(err, store.ErrNotFound):
		case err != nil:
			return nil, false, err
		default:
			entries, err := swap.DecodeEntries(blob)
			if err != nil {
				logger.Warnf("stored %s is unreadable, regenerating: %v", MainTableName, err)
			} else if err := gen.Restore(entries); err != nil {
				logger.Warnf("stored %s is invalid, regenerating: %v", MainTableName, err)
				gen = swap.NewGenerated()
			}
		}
	}

	if candidatesPath == "" {
		return gen, false, nil
	}

	candidates, packages, err := swap.LoadCandidates(candidatesPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warnf("no %s candidates at %s, using %d stored entries", MainTableName, candidatesPath, gen.Table().Len())
		return gen, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading %s candidates: %w", MainTableName, err)
	}

	force := false
	count := strconv.Itoa(packages)
	if st != nil {
		stored, err := st.Meta(ctx, store.MetaContentPackageCount)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, false, err
		}
		force = stored != count
	}

	changed = gen.Generate(candidates, force)
	logger.Infof("%s: %d entries (regenerated: %v, forced: %v)", MainTableName, gen.Table().Len(), changed, force)

	if st == nil {
		return gen, changed, nil
	}

	if changed {
		blob, err := swap.EncodeEntries(gen.Entries())
		if err != nil {
			return nil, false, fmt.Errorf("encoding %s: %w", MainTableName, err)
		}
		if err := st.PutGenerated(ctx, MainTableName, blob); err != nil {
			return nil, false, err
		}
	}
	if force {
		if err := st.SetMeta(ctx, store.MetaContentPackageCount, count); err != nil {
			return nil, false, err
		}
	}

	return gen, changed, nil
}
