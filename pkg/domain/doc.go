/*
Package domain contains the core domain models of the survey engine.

It defines the entities the navigation engine works with: Questions and their
routing, Answers, the Navigation State and the Submission emitted on completion.
This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Question: A node in the navigation graph (single choice, multi choice, short or long text).
  - Route: Tagged variant describing where a question leads (fixed, keyed by answer, or terminal).
  - Answer: The value given for one question.
  - State: The runtime snapshot of a session (current question, history, answers).
  - Outcome: What a navigation operation produced (advanced, at start, completed).
*/
package domain
