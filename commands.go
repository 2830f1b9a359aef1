package waterleaf

type Commands struct {
	app *App
}

func (cmd *Commands) ChangeState(newState State) *Commands {
	cmd.app.changeState(newState)
	return cmd
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) UseSystem(system systemScheduleBuilder) *Commands {
	cmd.app.UseSystem(system)
	return cmd
}

// Exit asks the App to stop after the current frame.
func (cmd *Commands) Exit() {
	cmd.app.Exit()
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
