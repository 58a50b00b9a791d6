package ui

import "github.com/AlecAivazis/survey/v2"

// IconOption sets the question icon to "-" so survey prompts match the
// rest of the CLI.
func IconOption() survey.AskOpt {
	return survey.WithIcons(func(icons *survey.IconSet) {
		icons.Question.Text = "-"
	})
}

// Confirm asks a yes/no question through survey, defaulting to no.
func Confirm(message string) (bool, error) {
	var ok bool
	prompt := &survey.Confirm{Message: message, Default: false}
	if err := survey.AskOne(prompt, &ok, IconOption()); err != nil {
		return false, err
	}
	return ok, nil
}
