package application

import (
	"fmt"
	"strings"

	"github.com/bnema/platform-intake/internal/domain"
)

func helpReply() string {
	return "I can collect configuration for a new Glue database, S3 bucket or IAM role and open one pull request for all of them.\n" +
		"Which one would you like to add first: a database, a bucket or a role?"
}

func fieldPrompt(kind domain.Kind) string {
	schema, err := domain.SchemaFor(kind)
	if err != nil {
		return helpReply()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Let's add a %s. Send its details as \"field: value\" lines", kind)
	if schema.HasNested() {
		b.WriteString(" (nested access entries as indented YAML):\n")
	} else {
		b.WriteString(", or as comma-separated values in this order:\n")
	}
	for _, field := range schema.Fields {
		line := "- " + field.Name
		switch {
		case field.Optional:
			line += " (optional)"
		case field.Nested:
			line += " (nested)"
		}
		if field.Example != "" {
			line += ", e.g. " + field.Example
		}
		b.WriteString(line + "\n")
	}
	if kind == domain.KindRole {
		b.WriteString("Example access block:\naccess_to_resources:\n  glue_databases:\n    minerva_sales_raw: [read]\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func notDataReply(kind domain.Kind) string {
	return fmt.Sprintf("That doesn't look like %s details yet. %s", kind, fieldPrompt(kind))
}

func rejectedReply(err error) string {
	return err.Error() + "\n\nPlease correct the values above and send the details again."
}

func addedReply(record domain.Record, counts domain.Counts) string {
	return fmt.Sprintf(
		"Added %s %s. This request now holds %s.\nAdd another database, bucket or role, or say \"done\" to create the pull request.",
		record.Kind(), record.Name(), strings.Join(counts.Lines(), ", "),
	)
}

func nothingCollectedReply() string {
	return "Nothing has been added yet. " + helpReply()
}

func nextKindReply() string {
	return "Which resource would you like to add next: a database, a bucket or a role? Say \"done\" when you are finished."
}

func titlePrompt(counts domain.Counts) string {
	return fmt.Sprintf(
		"Ready to publish %s. Give the pull request a short descriptive title (more than %d words).",
		strings.Join(counts.Lines(), ", "), MinTitleWords,
	)
}

func titleTooShortReply() string {
	return fmt.Sprintf("That title is too short; please use more than %d words.", MinTitleWords)
}

func cancelledReply(counts domain.Counts) string {
	if counts.Total() == 0 {
		return "Nothing to discard. " + helpReply()
	}
	return fmt.Sprintf("Discarded %s. %s", strings.Join(counts.Lines(), ", "), helpReply())
}

func publishReply(result domain.PublishResult) string {
	summary := strings.Join(result.Counts.Lines(), ", ")
	switch result.Outcome {
	case domain.OutcomeCreated:
		return fmt.Sprintf("Pull request created for %s: %s", summary, result.URL)
	case domain.OutcomeConflict:
		if result.URL == "" {
			return fmt.Sprintf("The files for %s were pushed, but a pull request is already open for this branch. Your changes are included in it.", summary)
		}
		return fmt.Sprintf("The files for %s were pushed and are included in the pull request that is already open: %s", summary, result.URL)
	default:
		if result.Pushed() {
			return fmt.Sprintf(
				"The files for %s were committed and pushed, but the pull request could not be created: %s. The changes are on the integration branch; ask a maintainer to open the pull request.",
				summary, result.Cause,
			)
		}
		return fmt.Sprintf("Publishing failed during %s: %s. Nothing was pushed; start a new request once the issue is resolved.", result.Stage, result.Cause)
	}
}
