package slack

import (
	"fmt"

	"github.com/filmdesk/filmdesk/pkg/domain/model/chat"
	"github.com/slack-go/slack"
)

// buildRenderBlocks converts a transport-neutral render into Block Kit: one
// mrkdwn section followed by an actions block per button row.
func buildRenderBlocks(r chat.Render) []slack.Block {
	blocks := []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, r.Text, false, false),
			nil,
			nil,
		),
	}

	for i, row := range r.Buttons {
		elements := make([]slack.BlockElement, len(row))
		for j, btn := range row {
			elements[j] = slack.NewButtonBlockElement(
				btn.Action.String(),
				btn.Action.String(),
				slack.NewTextBlockObject(slack.PlainTextType, btn.Label, true, false),
			)
		}
		blocks = append(blocks, slack.NewActionBlock(fmt.Sprintf("nav_row_%d", i), elements...))
	}

	return blocks
}
