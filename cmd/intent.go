package cmd

// IntentKind is the single action an invocation performs.
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentHelp
	IntentList
	IntentExportOne
	IntentExportAll
)

func (k IntentKind) String() string {
	switch k {
	case IntentHelp:
		return "help"
	case IntentList:
		return "list"
	case IntentExportOne:
		return "export-one"
	case IntentExportAll:
		return "export-all"
	default:
		return "none"
	}
}

type Intent struct {
	Kind  IntentKind
	Table string // requested name for IntentExportOne, as typed by the user
}

type flagLookup interface {
	Bool(name string) bool
	IsSet(name string) bool
	String(name string) string
}

// ParseIntent picks one intent from the parsed flags. Precedence is
// help, list, export one table, export all tables.
func ParseIntent(flags flagLookup) Intent {
	switch {
	case flags.Bool("help"):
		return Intent{Kind: IntentHelp}
	case flags.Bool("list_tables"):
		return Intent{Kind: IntentList}
	case flags.IsSet("export_table"):
		return Intent{Kind: IntentExportOne, Table: flags.String("export_table")}
	case flags.Bool("export_all_tables"):
		return Intent{Kind: IntentExportAll}
	default:
		return Intent{Kind: IntentNone}
	}
}
