package domain

// LineItem describes one reportable line of the planning model.
type LineItem struct {
	Code     string
	Label    string
	Category string
}

// Items lists every line-item code in presentation order. The engine keys all
// computed amounts by these codes.
var Items = []LineItem{
	{"REV", "Revenue", "sales"},
	{"COGS_MAT", "COGS | Materials", "cogs"},
	{"COGS_LBR", "COGS | External labor", "cogs"},
	{"COGS_OUT_SRC", "COGS | Subcontracting (dedicated)", "cogs"},
	{"COGS_OUT_CON", "COGS | Subcontracting (commissioned)", "cogs"},
	{"COGS_OTH", "COGS | Other direct costs", "cogs"},
	{"COGS_TTL", "COGS | Total", "cogs"},
	{"GROSS", "Gross profit", "gross"},
	{"OPEX_H", "OPEX | Personnel", "opex"},
	{"OPEX_K", "OPEX | General expenses", "opex"},
	{"OPEX_DEP", "OPEX | Depreciation", "opex"},
	{"OPEX_TTL", "OPEX | Total", "opex"},
	{"OP", "Operating income", "income"},
	{"NOI_MISC", "Non-operating income | Misc", "nonop"},
	{"NOI_GRANT", "Non-operating income | Grants", "nonop"},
	{"NOI_OTH", "Non-operating income | Other", "nonop"},
	{"NOE_INT", "Non-operating expense | Interest paid", "nonop"},
	{"NOE_OTH", "Non-operating expense | Other", "nonop"},
	{"ORD", "Ordinary income", "income"},
	{"TAX", "Corporate tax", "income"},
	{"NET", "Net income", "income"},
	{"DIV", "Dividends", "income"},
	{"BE_SALES", "Break-even sales", "kpi"},
	{"PC_SALES", "Sales per FTE", "kpi"},
	{"PC_GROSS", "Gross profit per FTE", "kpi"},
	{"PC_ORD", "Ordinary income per FTE", "kpi"},
	{"LDR", "Labor distribution ratio", "kpi"},
}

// ItemLabels maps a line-item code to its display label.
var ItemLabels = func() map[string]string {
	labels := make(map[string]string, len(Items))
	for _, item := range Items {
		labels[item.Code] = item.Label
	}
	return labels
}()

// CostCodes are the cost-of-goods line codes, summed into COGS_TTL.
var CostCodes = []string{"COGS_MAT", "COGS_LBR", "COGS_OUT_SRC", "COGS_OUT_CON", "COGS_OTH"}

// OpexCodes are the operating-expense line codes, summed into OPEX_TTL.
var OpexCodes = []string{"OPEX_H", "OPEX_K", "OPEX_DEP"}

// NOICodes are the non-operating income line codes.
var NOICodes = []string{"NOI_MISC", "NOI_GRANT", "NOI_OTH"}

// NOECodes are the non-operating expense line codes.
var NOECodes = []string{"NOE_INT", "NOE_OTH"}
