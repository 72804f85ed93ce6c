package workflow

import "fmt"

// Output fragments the platform CLI prints when the workspace is already gone.
var workspaceMissing = []string{"not found", "does not exist", "doesn't exist"}

const migrationGuide = `Manual migration required.
Follow these steps in the GraphQL admin:
  1. Open: vtex browse admin/graphql-ide
  2. Select vtex.pages-graphql@2.x
  3. Run the following mutation:
     mutation {
       updateThemeIds(from:"{{.Vendor}}.store@{{.ThemeFrom}}", to:"{{.Vendor}}.store@{{.ThemeTo}}")
     }
  4. Check that the response is:
     {
       "data": {
         "updateThemeIds": true
       }
     }`

func command(name, args string) Step {
	return Step{Name: name, Kind: StepCommand, Command: args}
}

func gate(name, prompt string) Step {
	return Step{Name: name, Kind: StepGate, Prompt: prompt}
}

func attest(name, prompt, warning string) Step {
	return Step{Name: name, Kind: StepPrecondition, Check: CheckConfirm, Prompt: prompt, Warning: warning}
}

func announce(name, message string) Step {
	return Step{Name: name, Kind: StepAnnounce, Message: message}
}

// production steps shared by every workflow: log in, recreate the
// production workspace and switch to it.
func enterProduction() []Step {
	return []Step{
		command("login", "login {{.Vendor}}"),
		{
			Name:     "delete-production",
			Kind:     StepCommand,
			Command:  "workspace delete production",
			Capture:  true,
			Echo:     true,
			Tolerate: workspaceMissing,
		},
		command("use-production", "use production --production"),
	}
}

func reviewProduction() []Step {
	return []Step{
		command("update-production", "update"),
		announce("production-url", "Please review the changes at:\n{{.ProductionURL}}"),
		gate("review", "Are the changes correct and do you want to continue?"),
	}
}

func promoteMaster() []Step {
	return []Step{
		command("use-master", "use master"),
		command("update-master", "update"),
	}
}

func customAppChecks() []Step {
	return []Step{
		attest("app-directory",
			"Are you inside the custom app directory?",
			"Move into the custom app directory and run the deploy again."),
		{
			Name:    "manifest-present",
			Kind:    StepPrecondition,
			Check:   CheckFileExists,
			Path:    "{{.Manifest}}",
			Warning: "{{.Manifest}} was not found. Make sure you are in the right directory.",
		},
	}
}

func concat(groups ...[]Step) []Step {
	var out []Step
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Definition returns the fixed step sequence for a workflow type.
func Definition(t Type) (Workflow, error) {
	wf := Workflow{Type: t, Name: string(t)}

	switch t {
	case PatchStable:
		wf.Steps = concat(
			enterProduction(),
			[]Step{
				command("release", "release patch stable"),
				command("deploy", "deploy --force"),
			},
			reviewProduction(),
			promoteMaster(),
		)
	case MajorStable:
		wf.Steps = concat(
			enterProduction(),
			[]Step{
				command("release", "release major stable"),
				command("install-graphql-ide", "install {{.GraphQLIDE}}"),
				announce("migration", migrationGuide),
				announce("production-url", "Review the changes at:\n{{.ProductionURL}}"),
				gate("migration-done", "Did the migration complete successfully and do you want to continue?"),
				command("promote", "promote"),
			},
			promoteMaster(),
		)
	case NewCustomApp:
		wf.Steps = concat(
			customAppChecks(),
			enterProduction(),
			[]Step{
				command("publish", "publish"),
				command("deploy", "deploy --force"),
			},
			reviewProduction(),
			promoteMaster(),
		)
	case UpdateCustomApp:
		wf.Steps = concat(
			customAppChecks(),
			[]Step{
				attest("version-bumped",
					"Did you bump the version in {{.Manifest}} and push the changes?",
					"Bump the version in {{.Manifest}} and push the changes before continuing."),
			},
			enterProduction(),
			[]Step{
				command("publish", "publish"),
				command("deploy", "deploy --force"),
			},
			reviewProduction(),
			promoteMaster(),
		)
	default:
		return Workflow{}, fmt.Errorf("unknown workflow type %q", t)
	}

	return wf, nil
}
