package classify

// Role is a semantic tag inferred from account or line text, distinct
// from the formal account type. One account can carry several roles.
type Role string

const (
	RoleCash       Role = "cash"
	RoleBank       Role = "bank"
	RoleReceivable Role = "receivable"
	RolePayable    Role = "payable"
	RoleRevenue    Role = "revenue"
	RoleExpense    Role = "expense"
)

// RoleSet is the set of roles matched for one account/line pair.
type RoleSet map[Role]struct{}

// Has reports whether r is in the set.
func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

func (s RoleSet) add(r Role) {
	s[r] = struct{}{}
}

// Rule maps keyword matches to a role. Keywords are matched as
// case-insensitive substrings of the account name and, when
// MatchDescription is set, of the journal line description too.
type Rule struct {
	Role             Role
	Keywords         []string
	MatchDescription bool
}

// DefaultRules returns the keyword heuristic used when accounts carry
// no trusted type. Order is stable but has no precedence effect: every
// matching rule contributes its role.
func DefaultRules() []Rule {
	return []Rule{
		{Role: RoleCash, Keywords: []string{"cash", "petty cash"}},
		{Role: RoleBank, Keywords: []string{"bank", "checking"}},
		{
			Role:             RoleReceivable,
			Keywords:         []string{"receivable", "invoice", "customer", "debtor"},
			MatchDescription: true,
		},
		{
			Role:             RolePayable,
			Keywords:         []string{"payable", "vendor", "supplier", "creditor", "bill", "purchase"},
			MatchDescription: true,
		},
		{
			Role:             RoleRevenue,
			Keywords:         []string{"revenue", "income", "sales", "service", "sold", "sale"},
			MatchDescription: true,
		},
		{
			Role: RoleExpense,
			Keywords: []string{
				"rent", "salary", "salaries", "wage", "payroll",
				"utilities", "electricity", "water", "internet", "telephone",
				"supplies", "stationery", "equipment", "maintenance", "repair",
				"insurance", "travel", "fuel", "transport", "freight", "shipping", "postage",
				"advertising", "marketing", "promotion",
				"subscription", "software", "hosting",
				"fee", "fees", "commission", "interest expense",
				"tax", "taxes", "penalty", "penalties", "fine",
				"depreciation", "amortization", "bad debt", "write-off",
				"donation", "charity", "bonus", "bonuses",
				"legal", "accounting", "consulting", "professional",
				"training", "printing", "cleaning", "security",
			},
			MatchDescription: true,
		},
	}
}
