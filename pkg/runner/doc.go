/*
Package runner implements the interactive loop that drives a survey session
from a terminal or a pipe.

It acts as the bridge between the Session and the outside world: an IOHandler
renders questions (it is the session's ports.Presenter) and reads commands,
while the Runner turns those commands into RecordAndAdvance and GoBack calls
until the session completes or the respondent quits.

# Key Components

  - Runner: the loop. Invalid answers are reported and asked again.
  - TextHandler: line based terminal interaction with numbered options.
  - JSONHandler: JSON-Lines interaction for scripts and other programs.

# Usage

	h := runner.NewTextHandler(os.Stdin, os.Stdout)
	eng, _ := survey.New(cat, survey.WithPresenter(h))
	session, _ := eng.Start(ctx)

	if err := runner.NewRunner(runner.WithInputHandler(h)).Run(ctx, session); err != nil {
		log.Fatal(err)
	}
*/
package runner
