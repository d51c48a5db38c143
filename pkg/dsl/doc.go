/*
Package dsl provides a fluent Go builder for survey catalogs.

It lets developers declare questions and their routing in code instead of
YAML or JSON files, which is handy for tests and for catalogs generated at
runtime.

Example usage:

	b := dsl.New()

	b.Add(1).
		SingleChoice("Do you own a pet?").
		Option("yes", "Yes").
		Option("no", "No").
		Branch("yes", 2).
		Branch("no", 3)

	b.Add(2).
		ShortText("What is its name?").
		Go(3)

	b.Add(3).
		LongText("Anything else?").
		Terminal()

	cat, err := b.Build()
	// ... pass cat to survey.New(...)

The first question added is the entry unless Entry is called.
*/
package dsl
