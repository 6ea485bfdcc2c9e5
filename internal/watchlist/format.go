package watchlist

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rmoreira/steamwatch-bot/pkg/db/models"
)

// User-facing texts are fixed to pt-BR, matching the audience of the bot.
const (
	welcomeMessage = "Olá! Bem-vindo ao Bot de Monitoramento de Preços da Steam.\n\n" +
		"Aqui estão os comandos disponíveis:\n" +
		"/add <nome_do_jogo> - Adiciona um jogo à sua lista de observação\n" +
		"/check - Verifica os preços dos jogos na sua lista\n" +
		"/list - Mostra todos os jogos na sua lista de observação\n" +
		"/remove <nome_do_jogo> - Remove um jogo da sua lista de observação\n"

	helpMessage = "/start - Inicia o bot.\n" +
		"/add <nome_do_jogo> - Adiciona um jogo à lista de observação.\n" +
		"/check - Verifica os preços dos jogos na sua lista de observação.\n" +
		"/list - Lista os jogos observados.\n" +
		"/remove <nome_do_jogo> - Remove um jogo da lista de observação.\n"

	addUsageMessage    = "Uso: /add <nome_do_jogo>"
	removeUsageMessage = "Uso: /remove <nome_do_jogo>"

	couldNotFindMessage    = "Não foi possível encontrar o jogo. Por favor, verifique o nome e tente novamente."
	couldNotGetInfoMessage = "Não foi possível encontrar informações sobre este jogo."
	emptyWatchlistMessage  = "Você não tem jogos na sua lista de observação."
	checkCompleteMessage   = "Verificação de preços concluída."
	genericFailureMessage  = "Ocorreu um erro ao processar o comando. Tente novamente mais tarde."

	currencyPrefix = "R$ "
)

// formatPrice renders a currency value with two decimal places and the fixed
// currency prefix, e.g. "R$ 19.99".
func formatPrice(price decimal.Decimal) string {
	return currencyPrefix + price.StringFixed(2)
}

// formatPercent renders a percentage with two decimal places, e.g. "20.00".
func formatPercent(percent decimal.Decimal) string {
	return percent.StringFixed(2)
}

func formatAdded(name string) string {
	return fmt.Sprintf("Jogo '%s' adicionado à lista de observação.", name)
}

func formatAlreadyTracked(name string) string {
	return fmt.Sprintf("O jogo '%s' já está na sua lista de observação.", name)
}

func formatRemoved(name string) string {
	return fmt.Sprintf("O jogo '%s' foi removido da sua lista de observação.", name)
}

func formatRemoveNotFound(name string) string {
	return fmt.Sprintf("Não foi encontrado nenhum jogo com o nome '%s' na sua lista de observação.", name)
}

func formatDiscount(name string, percent, price decimal.Decimal) string {
	return fmt.Sprintf("O jogo '%s' está com desconto de %s%%! Preço atual: %s.", name, formatPercent(percent), formatPrice(price))
}

func formatNoDiscount(name string, price decimal.Decimal) string {
	return fmt.Sprintf("O jogo '%s' não está em promoção no momento. Preço atual: %s.", name, formatPrice(price))
}

func formatCouldNotRefresh(name string) string {
	return fmt.Sprintf("Não foi possível obter informações atualizadas para o jogo '%s'.", name)
}

// formatList renders the whole watchlist as a single message, one bullet
// line per entry in list order.
func formatList(entries []models.WatchEntry) string {
	var b strings.Builder
	b.WriteString("Seus jogos observados:\n\n")
	for _, entry := range entries {
		b.WriteString(fmt.Sprintf("- %s: %s\n", entry.GameName, formatPrice(entry.TrackedPrice)))
	}
	return b.String()
}
