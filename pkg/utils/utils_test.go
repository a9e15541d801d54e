package utils

import (
	"context"
	"sync"
	"testing"
	"time"

	"market-insight/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestPrettyDate(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	assert.Equal(t, "19 Oct 2026 - 07:05 UTC", PrettyDate(time.Date(2026, 10, 19, 14, 5, 0, 0, loc)))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "+1.23%", FormatPercentage(1.234))
	assert.Equal(t, "-0.50%", FormatPercentage(-0.5))
}

func TestCapitalizeSentence(t *testing.T) {
	assert.Equal(t, "Gold rallies", CapitalizeSentence("  gold rallies "))
	assert.Equal(t, "", CapitalizeSentence("   "))
}

func TestShouldContinue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	assert.True(t, ShouldContinue(ctx, logger.NewNop()))
	cancel()
	assert.False(t, ShouldContinue(ctx, logger.NewNop()))
}

func TestGoSafe_RecoversPanic(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	GoSafe(logger.NewNop(), func() {
		defer wg.Done()
		panic("boom")
	})
	wg.Wait()
}
