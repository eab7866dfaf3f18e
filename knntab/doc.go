// Package knntab implements a SQLite virtual table that classifies a query
// against a published training set with MATCH semantics.
//
//	CREATE VIRTUAL TABLE temp.foods_nn USING knn(foods, k=3, normalize=minmax);
//	SELECT rank, name, label, distance, prediction
//	  FROM foods_nn WHERE query MATCH '6,4';
//	SELECT prediction FROM foods_nn WHERE query MATCH '6,4' AND k = 1 LIMIT 1;
//
// Each result row is one of the k nearest training examples, in rank order.
// The prediction column repeats the majority label on every row.
//
// Options (after the set name): k=N, normalize=none|minmax|zscore,
// features=a|b, skip_degenerate=true, index=brute|cover.
//
// Training sets are published to an in-process catalog before the table is
// created, so cursors never read from the database they are attached to.
package knntab
