package memory

import (
	"testing"

	"github.com/peterkuimelis/plumbers/internal/storage"
	"github.com/peterkuimelis/plumbers/internal/storage/storetest"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storage.Store {
		return New()
	})
}
