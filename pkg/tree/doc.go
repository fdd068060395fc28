// Package tree indexes and rebuilds the nested element tree of a form.
//
// Lookups walk the tree depth-first: a panel is compared before its
// children, a dynamic panel before its template elements, and template
// elements before materialised instances. Rebuild helpers never modify their
// input; they copy the path from the root to the touched container and share
// every untouched branch.
package tree
