package ledger

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func TestSweeperReclaimsExpiredHoldsPeriodically(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ledger := NewMemoryLedger(WithClock(clock), WithHoldTTL(testHoldTTL))

	_, err := ledger.TryHold(context.Background(), testShowID, testCustomerID, seats("A1"))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sweeper, err := NewSweeper(ledger, 10*time.Millisecond, logger)
	require.NoError(t, err)

	sweeper.Start()

	clock.Advance(testHoldTTL + time.Second)

	// The sweep runs on its own schedule; the hold index empties without any
	// other operation touching the show.
	require.Eventually(t, func() bool {
		ledger.mu.RLock()
		defer ledger.mu.RUnlock()

		return len(ledger.holdIndex) == 0
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, sweeper.Shutdown())
}
