package oracle

import (
	"context"
	"fmt"

	"github.com/stationxml-rs/fixturecheck/internal/domain"
)

// NoneName identifies the unavailable oracle.
const NoneName = "none"

// Unavailable is the explicit "no oracle" variant. Runs using it degrade to
// well-formedness-only validation.
type Unavailable struct {
	Reason string
}

func NewUnavailable(reason string) *Unavailable {
	return &Unavailable{Reason: reason}
}

func (u *Unavailable) Name() string { return NoneName }

func (u *Unavailable) Available() (bool, string) { return false, u.Reason }

func (u *Unavailable) Inspect(context.Context, string) (domain.OracleSummary, error) {
	return domain.OracleSummary{}, fmt.Errorf("%w: %s", domain.ErrOracleUnavailable, u.Reason)
}
