package mcpserver

// DocumentFormatContract describes the canonical work record format that
// LLM consumers should follow when creating or updating records.
const DocumentFormatContract = `# Worklog Record Format Contract

Every work record stored in the workspace MUST follow one of these structures.

## Daily Log (dailies/YYYY-MM-DD.md)

` + "```" + `markdown
---
type: daily
date: "2026-01-15"                  # REQUIRED, YYYY-MM-DD
week: "2026-W03"                    # derived from date if omitted
projects:                           # OPTIONAL, project names
  - worklog
tags: []                            # OPTIONAL
highlight: false                    # OPTIONAL, promotes the log into the weekly report
---

## Completed

What got done today.

## Project Progress

Per-project notes.

## Notes
` + "```" + `

## Weekly Report (weeks/YYYY-Www.md)

` + "```" + `markdown
---
type: weekly
week: "2026-W03"                    # REQUIRED, ISO week
start_date: "2026-01-12"            # derived from week if omitted
end_date: "2026-01-18"
---
` + "```" + `

The Weekly Report body is generated from the week's Daily Logs. Only edit
the Summary (one sentence), Risks & Blockers, and Next Week Plan sections;
every other section is rewritten on regeneration.

## Project (projects/<slug>.md)

` + "```" + `markdown
---
project:
  name: Worklog                     # REQUIRED, human-readable name
  github_repo: mkraev/worklog       # REQUIRED
  status: Planning                  # Planning when omitted
  type: software                    # software when omitted
---
` + "```" + `

## Rules

1. **YAML frontmatter is mandatory.** The ` + "```" + `---` + "```" + ` fences must be the first
   thing in the file (no leading blank lines).
2. **Dates are quoted strings** in YYYY-MM-DD form.
3. **ISO weeks** use the YYYY-Www form (e.g. ` + "`" + `2026-W03` + "`" + `, zero-padded week number).
4. **File paths** end with ` + "`" + `.md` + "`" + ` and use forward slashes.
5. **Encoding** is UTF-8 with a trailing newline.
6. A Daily Log marked ` + "`" + `highlight: true` + "`" + ` contributes its Completed (or
   Project Progress) section to the week's Highlights.

## Example

` + "```" + `markdown
---
type: daily
date: "2026-01-15"
week: "2026-W03"
projects:
  - worklog
tags:
  - billing
highlight: true
---

## Completed

Shipped the invoice export endpoint.

## Project Progress

worklog: merge engine now preserves edited sections.

## Notes
` + "```" + `
`
