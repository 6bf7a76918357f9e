package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeFlags struct {
	bools   map[string]bool
	strings map[string]string
}

func (f fakeFlags) Bool(name string) bool { return f.bools[name] }

func (f fakeFlags) IsSet(name string) bool {
	_, ok := f.strings[name]
	return ok || f.bools[name]
}

func (f fakeFlags) String(name string) string { return f.strings[name] }

func TestParseIntent(t *testing.T) {
	tests := []struct {
		name  string
		flags fakeFlags
		want  Intent
	}{
		{
			name: "nothing",
			want: Intent{Kind: IntentNone},
		},
		{
			name:  "help wins over everything",
			flags: fakeFlags{bools: map[string]bool{"help": true, "list_tables": true, "export_all_tables": true}},
			want:  Intent{Kind: IntentHelp},
		},
		{
			name:  "list wins over exports",
			flags: fakeFlags{bools: map[string]bool{"list_tables": true, "export_all_tables": true}, strings: map[string]string{"export_table": "x"}},
			want:  Intent{Kind: IntentList},
		},
		{
			name:  "export one wins over export all",
			flags: fakeFlags{bools: map[string]bool{"export_all_tables": true}, strings: map[string]string{"export_table": "orders"}},
			want:  Intent{Kind: IntentExportOne, Table: "orders"},
		},
		{
			name:  "export all",
			flags: fakeFlags{bools: map[string]bool{"export_all_tables": true}},
			want:  Intent{Kind: IntentExportAll},
		},
		{
			name:  "input only",
			flags: fakeFlags{strings: map[string]string{"input": "x.db"}},
			want:  Intent{Kind: IntentNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIntent(tt.flags))
		})
	}
}

func TestIntentKindString(t *testing.T) {
	assert.Equal(t, "help", IntentHelp.String())
	assert.Equal(t, "export-one", IntentExportOne.String())
	assert.Equal(t, "none", IntentNone.String())
}
