package main

import (
	"strings"

	"github.com/baiirun/tracker/internal/tracker"
)

const demoScript = `
echo "Sample data"
task "Wash the dishes" "there should be a description here"
task "Get some sleep" "some day you will"
epic "Move to a new flat"
subtask 3 "Pick a budget"
subtask 3 "Find a flat online" "needs an account first"
epic "Become a developer" "have to start somewhere"
subtask 6 "Finish the course" "do not drop out of the cohort"
list

echo "Budget in progress"
status 4 in_progress
list

echo "Course done"
status 7 done
list

echo "One more subtask"
subtask 6 "Find motivation"
list

echo "Viewing items"
show 3
show 1
show 4
show 3
history

echo "Deleting the flat epic"
delete 3
history
`

func runDemo(m *tracker.Manager, out printer) error {
	runner := &scriptRunner{m: m, out: out}
	return runner.run(strings.NewReader(demoScript))
}
