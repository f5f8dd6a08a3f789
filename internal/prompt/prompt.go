package prompt

import (
	"strings"
)

// Sections lists the changelog headings the model may use, in rendering order.
var Sections = []string{
	"New Features",
	"Improvements",
	"Bug Fixes",
	"Deprecations",
	"Performance Enhancements",
}

// Build embeds the commit lines into the changelog instructions.
// Lines are expected newest first, as git lists them.
func Build(commits []string) string {
	var b strings.Builder

	b.WriteString("You are an assistant that generates structured changelogs from Git commits.\n\n")

	b.WriteString("### Rules for Formatting the Changelog\n")
	b.WriteString("1. Render entries in chronological order, oldest first. The commits below are listed newest first.\n")
	b.WriteString("2. Keep the timestamp of each commit when one is given.\n")
	b.WriteString("3. Keep the commit hash of each commit, formatted as inline code using backticks.\n")
	b.WriteString("4. Format the output in Markdown with one section per heading.\n")
	b.WriteString("5. If a section does not apply, omit it.\n\n")

	b.WriteString("### Commits (newest first)\n")
	b.WriteString(strings.Join(commits, "\n"))
	b.WriteString("\n\n")

	b.WriteString("### Generate the Changelog\n")
	b.WriteString("Use the following structure:\n")
	for _, s := range Sections {
		b.WriteString("- **")
		b.WriteString(s)
		b.WriteString("**\n")
	}
	b.WriteString("\nEach entry should include:\n")
	b.WriteString("- A bullet point (`-`)\n")
	b.WriteString("- The commit **timestamp**\n")
	b.WriteString("- The commit **hash** (formatted as inline code using backticks)\n")
	b.WriteString("- A **clear description**\n")

	return b.String()
}
