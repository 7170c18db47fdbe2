package pg

import (
	"context"
	"fmt"

	"github.com/fourchess/fourchess/shared/domain"
	sharedpg "github.com/fourchess/fourchess/shared/storage/pg"
)

var sequences = map[domain.SequenceNamespace]string{
	domain.ThreadSequence: "thread_id_seq",
	domain.ReplySequence:  "reply_id_seq",
}

// NextId draws the next value of the namespace's sequence. nextval is
// atomic and never hands out a value twice, even when the surrounding
// transaction rolls back; gaps are allowed.
func NextId(ctx context.Context, q sharedpg.Querier, ns domain.SequenceNamespace) (int64, error) {
	seq, ok := sequences[ns]
	if !ok {
		return 0, fmt.Errorf("unknown sequence namespace %q", ns)
	}
	var id int64
	if err := q.QueryRowContext(ctx, `SELECT nextval($1::regclass)`, sharedpg.QuoteIdentifier(seq)).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to draw id from %s: %w", seq, err)
	}
	return id, nil
}

// NextId draws an id outside of any insert transaction.
func (s *Storage) NextId(ctx context.Context, ns domain.SequenceNamespace) (int64, error) {
	return NextId(ctx, s.db, ns)
}
