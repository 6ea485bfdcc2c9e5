package watchlist

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rmoreira/steamwatch-bot/pkg/db/models"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "R$ 19.99", formatPrice(decimal.RequireFromString("19.99")))
	assert.Equal(t, "R$ 0.00", formatPrice(decimal.Zero))
	assert.Equal(t, "R$ 5.50", formatPrice(decimal.RequireFromString("5.5")))
	assert.Equal(t, "R$ 120.00", formatPrice(decimal.NewFromInt(120)))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "20.00", formatPercent(decimal.RequireFromString("20")))
	assert.Equal(t, "33.33", formatPercent(decimal.RequireFromString("33.333333")))
}

func TestFormatDiscount(t *testing.T) {
	got := formatDiscount("Portal 2", decimal.RequireFromString("20"), decimal.RequireFromString("80"))
	assert.Equal(t, "O jogo 'Portal 2' está com desconto de 20.00%! Preço atual: R$ 80.00.", got)
}

func TestFormatNoDiscount(t *testing.T) {
	got := formatNoDiscount("Portal 2", decimal.RequireFromString("19.99"))
	assert.Equal(t, "O jogo 'Portal 2' não está em promoção no momento. Preço atual: R$ 19.99.", got)
}

func TestFormatList(t *testing.T) {
	entries := []models.WatchEntry{
		{GameName: "Portal 2", TrackedPrice: decimal.RequireFromString("19.99")},
		{GameName: "Half-Life 2", TrackedPrice: decimal.RequireFromString("39.9")},
	}
	assert.Equal(t, "Seus jogos observados:\n\n- Portal 2: R$ 19.99\n- Half-Life 2: R$ 39.90\n", formatList(entries))
}
