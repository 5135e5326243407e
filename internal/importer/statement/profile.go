package statement

type amountMode int

const (
	// One signed column, "-10,00" for a debit.
	amountSingle amountMode = iota
	// Separate unsigned debit and credit columns.
	amountSplit
)

// Profile describes the column layout of one bank export format.
type Profile struct {
	Name        string
	DateCol     string
	DateLayouts []string
	DescCol     string
	AmountMode  amountMode
	AmountCol   string
	DebitCol    string
	CreditCol   string
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

var (
	dashDate  = []string{"02-01-2006"}
	slashDate = []string{"02/01/2006", "02/01/06", "2006-01-02"}
)

// profiles are tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Name:        "cgd-cartao",
		DateCol:     "Data",
		DateLayouts: dashDate,
		DescCol:     "Descrição",
		AmountMode:  amountSplit,
		DebitCol:    "Débito",
		CreditCol:   "Crédito",
	},
	{
		Name:        "cgd-extrato",
		DateCol:     "Data mov.",
		DateLayouts: dashDate,
		DescCol:     "Descrição",
		AmountMode:  amountSingle,
		AmountCol:   "Movimento",
	},
	{
		Name:        "cgd-conta",
		DateCol:     "Data mov.",
		DateLayouts: dashDate,
		DescCol:     "Descrição",
		AmountMode:  amountSingle,
		AmountCol:   "Montante",
	},
	{
		Name:        "releve-debit-credit",
		DateCol:     "Date",
		DateLayouts: slashDate,
		DescCol:     "Libellé",
		AmountMode:  amountSplit,
		DebitCol:    "Débit",
		CreditCol:   "Crédit",
	},
	{
		Name:        "releve",
		DateCol:     "Date",
		DateLayouts: slashDate,
		DescCol:     "Libellé",
		AmountMode:  amountSingle,
		AmountCol:   "Montant",
	},
}
