package mining

import "fmt"

// Rule is an association Antecedent → Consequent drawn from one frequent itemset.
type Rule struct {
	Antecedent Itemset
	Consequent Itemset
	// Support is the support of Antecedent ∪ Consequent.
	Support    float64
	Confidence float64
	Lift       float64
}

// Itemset returns the originating itemset, Antecedent ∪ Consequent.
func (r Rule) Itemset() Itemset {
	return r.Antecedent.Union(r.Consequent)
}

// String renders the rule as "{a} -> {b}".
func (r Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.Antecedent, r.Consequent)
}

// DeriveRules splits every itemset of l whose size is within [MinLength, MaxLength]
// into antecedent/consequent pairs and keeps the splits that meet the thresholds.
//
// Consequents start as singletons and grow by the same join used for candidate
// generation; growth continues while at least two consequents meet min confidence
// and the antecedent stays non-empty. A split is emitted when it also meets min lift.
//
// Every support needed for scoring must already be in supports; a miss returns an
// error wrapping ErrMissingSupport, and a recorded zero one wrapping ErrZeroSupport.
func DeriveRules(l Lattice, supports SupportTable, cfg RuleConfig) ([]Rule, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := &deriver{supports: supports, cfg: cfg}
	for _, level := range l {
		for _, set := range level {
			if set.Len() < 2 || set.Len() < cfg.MinLength || set.Len() > cfg.MaxLength {
				continue
			}
			if err := d.derive(set); err != nil {
				return nil, err
			}
		}
	}
	return d.rules, nil
}

type deriver struct {
	supports SupportTable
	rules    []Rule
	cfg      RuleConfig
}

func (d *deriver) derive(set Itemset) error {
	consequents := make([]Itemset, set.Len())
	for i, item := range set.items {
		consequents[i] = fromSorted([]Item{item})
	}

	if d.cfg.mode() == RuleModeClassic {
		if set.Len() == 2 {
			_, err := d.prune(set, consequents, true)
			return err
		}
		return d.grow(set, consequents, false)
	}

	survivors, err := d.prune(set, consequents, true)
	if err != nil {
		return err
	}
	if len(survivors) < 2 {
		return nil
	}
	return d.grow(set, survivors, true)
}

// grow joins surviving consequents of size m into size m+1 and recurses on the survivors.
func (d *deriver) grow(set Itemset, consequents []Itemset, checkLift bool) error {
	for len(consequents) > 0 {
		m := consequents[0].Len()
		if set.Len() <= m+1 {
			return nil
		}

		var scoreErr error
		next := join(consequents, m+1, func(consequent Itemset) bool {
			if scoreErr != nil {
				return false
			}
			ok, err := d.score(set, consequent, checkLift)
			if err != nil {
				scoreErr = err
				return false
			}
			return ok
		})
		if scoreErr != nil {
			return scoreErr
		}
		if len(next) < 2 {
			return nil
		}
		consequents = next
	}
	return nil
}

// prune scores each consequent and returns the ones that survive.
func (d *deriver) prune(set Itemset, consequents []Itemset, checkLift bool) ([]Itemset, error) {
	var survivors []Itemset
	for _, consequent := range consequents {
		ok, err := d.score(set, consequent, checkLift)
		if err != nil {
			return nil, err
		}
		if ok {
			survivors = append(survivors, consequent)
		}
	}
	return survivors, nil
}

// score evaluates set−consequent → consequent and records the rule if it passes.
// The returned bool reports whether the consequent may keep growing, which depends
// on confidence alone: lift can rise again as the consequent grows.
func (d *deriver) score(set, consequent Itemset, checkLift bool) (bool, error) {
	antecedent := set.Minus(consequent)

	rule, err := Score(d.supports, antecedent, consequent)
	if err != nil {
		return false, err
	}
	if rule.Confidence < d.cfg.MinConfidence {
		return false, nil
	}
	if !checkLift || rule.Lift >= d.cfg.MinLift {
		d.rules = append(d.rules, rule)
	}
	return true, nil
}

// Score computes confidence and lift of antecedent → consequent from recorded supports.
//
//	confidence = s(A ∪ C) / s(A)
//	lift       = s(A ∪ C) / (s(A) · s(C))
func Score(supports SupportTable, antecedent, consequent Itemset) (Rule, error) {
	union := antecedent.Union(consequent)

	sUnion, err := supports.MustSupport(union)
	if err != nil {
		return Rule{}, err
	}
	sAnte, err := supports.MustSupport(antecedent)
	if err != nil {
		return Rule{}, err
	}
	sCons, err := supports.MustSupport(consequent)
	if err != nil {
		return Rule{}, err
	}
	if sAnte == 0 || sCons == 0 {
		return Rule{}, fmt.Errorf("%w: subset of frequent itemset %s", ErrZeroSupport, union)
	}

	return Rule{
		Antecedent: antecedent,
		Consequent: consequent,
		Support:    sUnion,
		Confidence: sUnion / sAnte,
		Lift:       sUnion / (sAnte * sCons),
	}, nil
}
