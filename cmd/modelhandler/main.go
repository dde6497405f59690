package main

import (
	_ "github.com/ekisa-team/modelhandler/internal/backend/annotate"
	_ "github.com/ekisa-team/modelhandler/internal/backend/command"
	_ "github.com/ekisa-team/modelhandler/internal/backend/fetch"
	_ "github.com/ekisa-team/modelhandler/internal/backend/static"
)

func main() {
	Execute()
}
