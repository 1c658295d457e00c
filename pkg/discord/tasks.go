package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	internaldiscord "github.com/hallorann/pitboss/internal/discord"
	"github.com/hallorann/pitboss/internal/types"
)

// maxThreadNameLen is the platform limit on thread names.
const maxThreadNameLen = 100

// threadArchiveMinutes is how long a task thread stays active without
// messages before Discord auto-archives it (3 days).
const threadArchiveMinutes = 4320

// maxAssignees is how many personN options the command accepts.
const maxAssignees = 7

func assignTaskOptions() []*discordgo.ApplicationCommandOption {
	options := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "task_manager",
			Description: "Team member managing the task",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "deadline",
			Description: "Deadline for the task, any format",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "description",
			Description: "Task summary; also used as the thread name",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "difficulty",
			Description: "Difficulty level for the task",
			Required:    true,
		},
	}

	ordinals := []string{"First", "Second", "Third", "Fourth", "Fifth", "Sixth", "Seventh"}
	for n := 1; n <= maxAssignees; n++ {
		options = append(options, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        fmt.Sprintf("person%d", n),
			Description: fmt.Sprintf("%s assignee to mention in the task thread", ordinals[n-1]),
		})
	}

	return options
}

// threadName derives a thread title from the task description,
// trimmed to the platform limit.
func threadName(description string) string {
	name := strings.TrimSpace(description)
	if name == "" {
		name = "task-thread"
	}
	if len(name) > maxThreadNameLen {
		name = name[:maxThreadNameLen]
	}
	return name
}

// handleAssignTask creates a public thread named after the task and
// posts the task details into it, mentioning every assignee.
func (b *Bot) handleAssignTask(i *discordgo.InteractionCreate) {
	opts := optionMap(i.ApplicationCommandData().Options)

	manager := opts["task_manager"].UserValue(nil)
	deadline := opts["deadline"].StringValue()
	description := opts["description"].StringValue()
	difficulty := opts["difficulty"].StringValue()

	mentions := make([]string, 0, maxAssignees)
	for n := 1; n <= maxAssignees; n++ {
		if opt, ok := opts[fmt.Sprintf("person%d", n)]; ok {
			mentions = append(mentions, fmt.Sprintf("<@%s>", opt.UserValue(nil).ID))
		}
	}
	assignees := strings.Join(mentions, " ")
	if assignees == "" {
		assignees = "_No additional assignees provided._"
	}

	thread, err := b.session.ThreadStart(i.ChannelID, threadName(description), discordgo.ChannelTypeGuildPublicThread, threadArchiveMinutes)
	if err != nil {
		b.reportError(i, types.WrapError(types.ErrPermissionDenied,
			"I couldn't create a thread in this channel.", err))
		return
	}

	summary := fmt.Sprintf("**Task Manager:** <@%s>\n**Deadline:** %s\n**Description:** %s\n**Difficulty:** %s\n**Assigned To:** %s",
		manager.ID, deadline, description, difficulty, assignees)

	if _, err := b.session.ChannelMessageSend(thread.ID, summary); err != nil {
		b.logger.Warn("Failed to post task summary to thread %s: %v", thread.ID, err)
	}

	b.respond(i, internaldiscord.NewEphemeralResponse(
		fmt.Sprintf("Created task thread `%s` and notified the team.", thread.Name), nil))
}
