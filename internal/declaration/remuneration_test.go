package declaration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSumRemuneration(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "french amounts",
			input: "<remuneration><montant>1 000,50</montant><montant>250,00</montant></remuneration>",
			want:  "1250.5",
		},
		{
			name:  "nested wrappers are not counted",
			input: "<remuneration><montant><montant><annee>2020</annee><montant>300</montant></montant><montant><annee>2021</annee><montant>200</montant></montant></montant></remuneration>",
			want:  "500.0",
		},
		{
			name:  "unparseable entry skipped",
			input: "<remuneration><montant>Non communiqué</montant><montant>75,5</montant></remuneration>",
			want:  "75.5",
		},
		{
			name:  "empty subtree",
			input: "<remuneration><montant><montant></montant></montant></remuneration>",
			want:  "",
		},
		{
			name:  "zero total",
			input: "<remuneration><montant>0</montant></remuneration>",
			want:  "",
		},
		{
			name:  "integral total",
			input: "<remuneration><montant>100</montant></remuneration>",
			want:  "100.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, "r.xml", tt.input)
			require.Equal(t, tt.want, SumRemuneration(doc.Root))
		})
	}
}

func TestSumRemunerationNil(t *testing.T) {
	require.Equal(t, "", SumRemuneration(nil))
}
