package runner

import (
	"testing"

	"github.com/aretw0/survey/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	colors = domain.Question{ID: 1, Kind: domain.KindSingleChoice, Options: []domain.Option{
		{Label: "Red", Value: "red"}, {Label: "Green", Value: "green"},
	}}
	toppings = domain.Question{ID: 2, Kind: domain.KindMultiChoice, Options: []domain.Option{
		{Label: "Cheese", Value: "cheese"}, {Label: "Ham", Value: "ham"}, {Label: "Olives", Value: "olives"},
	}}
	nickname = domain.Question{ID: 3, Kind: domain.KindShortText}
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		q        domain.Question
		line     string
		hasPrior bool
		want     Command
	}{
		{"Option Value", colors, "red", false, Command{Kind: CommandAnswer, Value: domain.Single("red")}},
		{"Case Insensitive", colors, "GREEN", false, Command{Kind: CommandAnswer, Value: domain.Single("green")}},
		{"Option Number", colors, "2", false, Command{Kind: CommandAnswer, Value: domain.Single("green")}},
		{"Multi Mixed", toppings, "3, cheese", false, Command{Kind: CommandAnswer, Value: domain.Multi("olives", "cheese")}},
		{"Multi Spaces", toppings, "ham olives", false, Command{Kind: CommandAnswer, Value: domain.Multi("ham", "olives")}},
		{"Multi Empty", toppings, "", false, Command{Kind: CommandAnswer, Value: domain.Multi()}},
		{"Text Trimmed", nickname, "  Ana Lima ", false, Command{Kind: CommandAnswer, Value: domain.Single("Ana Lima")}},
		{"Back", colors, "b", false, Command{Kind: CommandBack}},
		{"Back Word", nickname, "BACK", false, Command{Kind: CommandBack}},
		{"Quit", toppings, "exit", false, Command{Kind: CommandQuit}},
		{"Keep Prior", colors, "", true, Command{Kind: CommandKeep}},
		{"Empty Without Prior", nickname, "", false, Command{Kind: CommandAnswer, Value: domain.Single("")}},
		{"Option Named Like Back", grades, "b", false, Command{Kind: CommandAnswer, Value: domain.Single("B")}},
		{"Quoted Exit Is Text", nickname, `"Exit"`, false, Command{Kind: CommandAnswer, Value: domain.Single("Exit")}},
		{"Quoted Back Is Text", nickname, ` "back" `, true, Command{Kind: CommandAnswer, Value: domain.Single("back")}},
		{"Quoted Option", colors, `"green"`, false, Command{Kind: CommandAnswer, Value: domain.Single("green")}},
		{"Quoted Empty Is Not Keep", nickname, `""`, true, Command{Kind: CommandAnswer, Value: domain.Single("")}},
		{"Stray Quote Is Plain Text", nickname, `"hi`, false, Command{Kind: CommandAnswer, Value: domain.Single(`"hi`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.q, tt.line, tt.hasPrior)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Kind, got.Kind)
			assert.True(t, tt.want.Value.Equal(got.Value), "want %v, got %v", tt.want.Value, got.Value)
		})
	}
}

func TestParseLine_Rejects(t *testing.T) {
	_, err := ParseLine(colors, "3", false)
	assert.ErrorContains(t, err, "between 1 and 2")

	_, err = ParseLine(colors, "blue", false)
	assert.ErrorContains(t, err, "unknown option")

	_, err = ParseLine(toppings, "ham,bacon", false)
	assert.ErrorContains(t, err, "bacon")
}

func TestCoerce(t *testing.T) {
	assert.True(t, Coerce(toppings, domain.Single("ham")).Equal(domain.Multi("ham")))
	assert.True(t, Coerce(toppings, domain.Single("")).Equal(domain.Multi()))
	assert.True(t, Coerce(colors, domain.Multi("red")).Equal(domain.Single("red")))

	two := domain.Multi("red", "green")
	assert.True(t, Coerce(colors, two).Equal(two), "ambiguous shapes are left to the engine")
}

func TestCheckOptions(t *testing.T) {
	assert.NoError(t, CheckOptions(colors, domain.Single("red")))
	assert.Error(t, CheckOptions(colors, domain.Single("blue")))
	assert.Error(t, CheckOptions(toppings, domain.Multi("ham", "bacon")))
	assert.NoError(t, CheckOptions(nickname, domain.Single("anything")))
}

func TestSanitize(t *testing.T) {
	v, err := Sanitize(domain.Multi("a\x00b", "c"), 0)
	require.NoError(t, err)
	assert.True(t, v.Equal(domain.Multi("ab", "c")))

	_, err = Sanitize(domain.Single("too long"), 3)
	assert.ErrorIs(t, err, ErrInputTooLarge)
}
