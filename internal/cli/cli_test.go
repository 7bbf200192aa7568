package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pool-calc-backend/internal/config"
	"pool-calc-backend/internal/domain"
	"pool-calc-backend/internal/handlers"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewPoolCalcCommand()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestWizard_Interactive(t *testing.T) {
	pdf := filepath.Join(t.TempDir(), "estimate.pdf")

	input := strings.Join([]string{
		"",  // шаг 1 без выбора
		"1", // classic
		"2", // medium
		"<", // назад с шага 3
		"",  // medium остаётся
		"2", // heater
		"1", // easy
		"1", // normal
		"1", // flat
		"1", // decking
	}, "\n") + "\n"

	out, err := run(t, input, "wizard", "--pdf", pdf)
	require.NoError(t, err, out)

	assert.Contains(t, out, "Please select a pool model option")
	assert.Contains(t, out, "Step 3 of 5: pool features")
	assert.Equal(t, 2, strings.Count(out, "Step 2 of 5: pool size"))
	assert.Contains(t, out, "Estimated range: $49,050 - $59,950")
	assert.Contains(t, out, "Classic Rectangle")

	body, err := os.ReadFile(pdf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestWizard_InputClosed(t *testing.T) {
	_, err := run(t, "1\n", "wizard")
	assert.Error(t, err)
}

func TestWizard_RejectsBadChoice(t *testing.T) {
	input := "9\nabc\n1\n"
	out, err := run(t, input, "wizard")
	require.Error(t, err)
	assert.Equal(t, 2, strings.Count(out, "enter a number between 1 and 5"))
	assert.Contains(t, out, "Step 2 of 5")
}

func TestEstimate_JSON(t *testing.T) {
	out, err := run(t, "", "estimate",
		"-s", "poolModel=classic",
		"-s", "poolSize=medium",
		"-s", "features=heater",
		"-s", "access=easy", "-s", "soil=normal", "-s", "slope=flat",
		"-s", "services=decking",
		"-o", "json")
	require.NoError(t, err, out)

	var got estimateJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got.Reference)
	assert.Equal(t, int64(54500), got.Result.Breakdown.Total)
	assert.Equal(t, int64(49050), got.Result.LowEstimate)
	assert.Equal(t, int64(59950), got.Result.HighEstimate)
	require.Len(t, got.Items, 4)
	assert.Equal(t, domain.LabelBasePool, got.Items[0].Label)
}

func TestEstimate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "missing site condition",
			args: []string{"estimate", "-s", "poolModel=lap", "-s", "poolSize=small", "-s", "access=easy", "-s", "slope=flat"},
			want: "Please select a site condition option",
		},
		{
			name: "unknown option",
			args: []string{"estimate", "-s", "poolModel=kidney"},
			want: `unknown option "kidney"`,
		},
		{
			name: "bad selection",
			args: []string{"estimate", "-s", "poolModel"},
			want: "expected GROUP=OPTION",
		},
		{
			name: "bad output",
			args: []string{"estimate", "-o", "xml"},
			want: "output format must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseSelections(t *testing.T) {
	sel, err := parseSelections([]string{"features=heater, spa", "features=waterfall", " poolModel = classic"})
	require.NoError(t, err)
	assert.Equal(t, domain.Selections{
		"features":  {"heater", "spa", "waterfall"},
		"poolModel": {"classic"},
	}, sel)
}

func TestCatalog_YAMLLoadsBack(t *testing.T) {
	out, err := run(t, "", "catalog")
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(file, []byte(out), 0644))

	c, err := config.LoadCatalog(file)
	require.NoError(t, err)
	assert.Equal(t, domain.NewDefaultPoolCatalog(), c)

	// тот же файл можно подать обратно через --catalog
	out, err = run(t, "", "catalog", "--catalog", file, "-o", "json")
	require.NoError(t, err)
	var fromJSON domain.PoolCatalog
	require.NoError(t, json.Unmarshal([]byte(out), &fromJSON))
	assert.Len(t, fromJSON.Groups, len(c.Groups))
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "pool-admin\n", "hash-password")
	require.NoError(t, err)
	assert.True(t, handlers.CheckPassword(strings.TrimSpace(out), "pool-admin"))

	_, err = run(t, "", "hash-password")
	assert.Error(t, err)
}
