package deal

import (
	"fmt"

	"github.com/fadedpez/suitdeck/internal/types"
)

func notFound(id string) error {
	return types.NewDeckError(types.ErrDealNotFound, fmt.Sprintf("deal not found: %s", id))
}

func invalidRecord(reason string) error {
	return types.NewDeckError(types.ErrInvalidArgument, reason)
}
