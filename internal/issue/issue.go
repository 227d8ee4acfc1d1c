// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	DescriptorNotFoundId Id = iota + 1
	MissingDescriptorFileId
	MalformedDescriptorId
	DescriptorReadFailedId
	UnrecognizedKindId
	ValidationRejectedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id    Id          // ID used to lookup the issue
	mdMsg MarkdownMsg // Markdown text that will be rendered
	links []HttpLink  // external references listed under "See also"
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Title returns the text of the first Markdown heading.
func (i *Issue) Title() string {
	for _, line := range strings.Split(string(i.mdMsg), "\n") {
		if title, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(title)
		}
	}
	return ""
}

func (i *Issue) Links() []HttpLink {
	return slices.Clone(i.links)
}

// Document returns the Markdown message followed by a "See also" list of
// the entry's links.
func (i *Issue) Document() string {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.links) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.links {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return md.String()
}

func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Document(), stylePath)
}

var (
	render = glamour.Render

	descriptorNotFoundIssue = &Issue{
		id: DescriptorNotFoundId,
		mdMsg: `
# Nothing found at that location!

The path does not exist, so there is no descriptor to read.

## Things you can try:
- Check the path for typos
- Pass the module directory or the descriptor file itself:
~~~
$ modreader raw ./modules/core
$ modreader raw ./modules/core/module.json
~~~`,
	}

	missingDescriptorFileIssue = &Issue{
		id: MissingDescriptorFileId,
		mdMsg: `
# The directory has no descriptor file!

A directory was given, but it does not contain the conventional descriptor
file (` + "`module.json`" + ` unless configured otherwise).

## Things you can try:
- Create the descriptor:
~~~json
{
  "type": "Module",
  "name": "core",
  "version": "1.0.0"
}
~~~

- Point at a different file name:
~~~
$ modreader --descriptor-file package.json raw ./modules/core
~~~

- Treat such directories as empty instead of failing:
~~~cue
missing_descriptor: "absent"
~~~`,
		links: []HttpLink{
			"https://www.json.org/json-en.html",
		},
	}

	malformedDescriptorIssue = &Issue{
		id: MalformedDescriptorId,
		mdMsg: `
# The descriptor is not valid JSON!

The file was read, but it could not be parsed as a single JSON object.

## Common issues:
- Trailing commas or comments (JSON allows neither)
- Unquoted keys
- A top-level array or string instead of an object
- Extra content after the closing brace

## Things you can try:
- Run with verbose mode to see the parser error:
~~~
$ modreader --verbose raw ./modules/core
~~~`,
		links: []HttpLink{
			"https://www.json.org/json-en.html",
			"https://www.rfc-editor.org/rfc/rfc8259",
		},
	}

	descriptorReadFailedIssue = &Issue{
		id: DescriptorReadFailedId,
		mdMsg: `
# The descriptor could not be read!

The file exists, but reading it failed.

## Common causes:
- Missing read permission on the file or its directory
- The file is larger than the configured ` + "`max_file_size`" + `

## Things you can try:
- Check file and directory permissions
- Raise the limit in your config file:
~~~cue
max_file_size: 10485760
~~~`,
	}

	unrecognizedKindIssue = &Issue{
		id: UnrecognizedKindId,
		mdMsg: `
# Unknown module kind!

The descriptor's ` + "`type`" + ` field is missing or is not one of the known kinds.
Matching is exact and case-sensitive.

## Known kinds:
- ` + "`Module`" + `
- ` + "`Submodule`" + `
- ` + "`Scenario`" + `
- ` + "`Collection`" + `

## Things you can try:
- Print the embedded schema:
~~~
$ modreader schema
~~~`,
		links: []HttpLink{
			"https://cuelang.org/docs/tour/types/",
		},
	}

	validationRejectedIssue = &Issue{
		id: ValidationRejectedId,
		mdMsg: `
# The descriptor does not match its schema!

The ` + "`type`" + ` field names a known kind, but the rest of the descriptor does not
satisfy the schema for that kind.

## Things you can try:
- Ask for the exact reason:
~~~
$ modreader validate --explain ./modules/core
~~~

- Compare against the schema:
~~~
$ modreader schema
~~~`,
		links: []HttpLink{
			"https://cuelang.org/docs/",
			"https://semver.org/",
		},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or is invalid.

## Things you can try:
- Show where the configuration is loaded from:
~~~
$ modreader config path
~~~

- Check the CUE syntax of the file
- Remove the file to fall back to defaults

## Example configuration:
~~~cue
descriptor_file:    "module.json"
missing_descriptor: "error"
scan: {
	max_depth: 4
	skip_dirs: [".git", "node_modules"]
}
~~~`,
		links: []HttpLink{
			"https://cuelang.org/docs/",
			"https://github.com/joho/godotenv",
		},
	}

	issues = map[Id]*Issue{
		descriptorNotFoundIssue.Id():    descriptorNotFoundIssue,
		missingDescriptorFileIssue.Id(): missingDescriptorFileIssue,
		malformedDescriptorIssue.Id():   malformedDescriptorIssue,
		descriptorReadFailedIssue.Id():  descriptorReadFailedIssue,
		unrecognizedKindIssue.Id():      unrecognizedKindIssue,
		validationRejectedIssue.Id():    validationRejectedIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
	}
)

// Values returns every catalog entry, ordered by id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int {
		return int(a.id) - int(b.id)
	})
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
