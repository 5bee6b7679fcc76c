package exposure

// DefaultAccounts is the business ordering of the matrix columns with their
// short header labels.
func DefaultAccounts() []Account {
	return []Account{
		{Name: `אר.בי ביטון נדל"ן ישיר`, Display: `נדל"ן ישיר`},
		{Name: "אר.בי ביטון השקעות בסטראט-אפ", Display: "סטראט-אפ"},
		{Name: "רפי ביטון החזקות בעמ SAFRA", Display: "SAFRA"},
		{Name: "אר.בי ביטון רפאל החזקות PI", Display: "PI"},
		{Name: "UBP", Display: "UBP"},
		{Name: `אר.בי ביטון רפאל החזקות בע"מ-לאומי`, Display: "לאומי"},
		{Name: `אר.בי ביטון רפאל החזקות בע"מ - תפנית`, Display: "תפנית"},
		{Name: "אר.בי ביטון החזקות בעמ - פועלים", Display: "פועלים"},
		{Name: "אר.בי ביטון רפאל החזקות בעמ - IBI", Display: "IBI"},
	}
}
