// Package sheets defines the outbound ports for exporting trade
// reviews to spreadsheet backends.
package sheets

import (
	"context"

	"disciplina/internal/core"
)

// TradeAppender appends a trade review as a row to an external log
// and returns a reference to the written row.
type TradeAppender interface {
	AppendTradeRow(ctx context.Context, trade core.TradeReview) (string, error)
}
