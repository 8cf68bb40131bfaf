// Package mining finds frequent itemsets in a list of transactions and derives
// association rules from them.
//
// The search is the level-wise Apriori algorithm: size-k candidates are built by
// joining frequent size-(k-1) itemsets that share their first k-2 items, and
// scanned against the transactions. No superset of an infrequent itemset can be
// frequent, so only joins of known-frequent sets are ever counted.
//
// Rules are derived per frequent itemset by growing consequents with the same join,
// pruned by confidence: moving an item from antecedent to consequent can never
// raise confidence.
//
// The SupportTable built by BuildLattice is threaded explicitly into DeriveRules.
// It records every scanned candidate so that rule scoring can look up the support
// of any subset it meets.
package mining
