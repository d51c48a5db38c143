/*
Package survey is a question navigation engine for branching questionnaires.

A catalog of questions forms a directed graph. Each question declares how the
next one is chosen: a fixed next question, a table keyed by the selected
option, or nothing at all for a terminal question. The engine walks a single
respondent through that graph, keeps the traversal history so the respondent
can go back, and emits one Submission when the terminal question is answered.

# Architecture

The navigation core (internal/runtime) is stateless: it takes a State and
returns a new one. This package wraps it in a Session that owns the state for
one respondent and talks to two collaborators:

  - a ports.SubmissionGateway that fetches prior submissions and appends the
    completed one (see pkg/persistence and the stores in pkg/adapters),
  - a ports.Presenter that renders questions and the completion screen
    (see pkg/runner for a line based terminal presenter).

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/survey"
		"github.com/aretw0/survey/pkg/adapters/memory"
		"github.com/aretw0/survey/pkg/catalog"
		"github.com/aretw0/survey/pkg/domain"
		"github.com/aretw0/survey/pkg/persistence"
	)

	func main() {
		cat, err := catalog.LoadFile("survey.yaml")
		if err != nil {
			log.Fatal(err)
		}

		eng, err := survey.New(cat,
			survey.WithGateway(persistence.NewGateway(memory.NewStore())),
		)
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		session, err := eng.Start(ctx)
		if err != nil {
			log.Fatal(err)
		}

		out, err := session.RecordAndAdvance(ctx, domain.Single("A"))
		if err != nil {
			log.Fatal(err)
		}
		log.Println(out.Kind)
	}

Errors are typed: domain.ErrInvalidAnswer is recoverable and means "ask
again", domain.ErrRouting points at a defect in the catalog and
domain.ErrInvalidState at a misuse of the session. Persistence failures never
fail a completion; they are reported in Outcome.PersistErr.
*/
package survey
