package mining

func baskets(rows ...[]Item) []Transaction {
	out := make([]Transaction, len(rows))
	for i, row := range rows {
		out[i] = NewItemset(row...)
	}
	return out
}

// groceryBaskets is the four-basket milk/bread/eggs example.
func groceryBaskets() []Transaction {
	return baskets(
		[]Item{"milk", "bread"},
		[]Item{"milk", "bread", "eggs"},
		[]Item{"bread", "eggs"},
		[]Item{"milk"},
	)
}

// tripleBaskets makes {a,b,c} frequent at support 0.5:
// s(a)=s(b)=s(c)=s(ab)=0.75, s(ac)=s(bc)=s(abc)=0.5.
func tripleBaskets() []Transaction {
	return baskets(
		[]Item{"a", "b", "c"},
		[]Item{"a", "b", "c"},
		[]Item{"a", "b"},
		[]Item{"c"},
	)
}

// wideBaskets is a larger deterministic dataset for property checks.
func wideBaskets() []Transaction {
	return baskets(
		[]Item{"beer", "chips", "salsa", "soda"},
		[]Item{"beer", "chips", "salsa"},
		[]Item{"beer", "chips"},
		[]Item{"chips", "salsa", "soda"},
		[]Item{"bread", "butter", "milk"},
		[]Item{"bread", "butter", "jam", "milk"},
		[]Item{"bread", "milk"},
		[]Item{"butter", "jam"},
		[]Item{"beer", "chips", "salsa", "soda", "milk"},
		[]Item{"bread", "butter", "milk", "chips"},
		[]Item{"soda"},
		[]Item{"beer", "salsa"},
	)
}

func ruleKeys(rules []Rule) map[string]Rule {
	out := make(map[string]Rule, len(rules))
	for _, r := range rules {
		out[r.String()] = r
	}
	return out
}
