package discord

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	mocksession "github.com/hallorann/pitboss/internal/discord/mock"
	"github.com/hallorann/pitboss/internal/types"
)

func TestNewErrorResponseIsEphemeral(t *testing.T) {
	resp := NewErrorResponse(types.NewGameError(types.ErrInsufficientFunds, "You can't cover that bet."))
	assert.True(t, resp.Ephemeral)
	assert.Contains(t, resp.Content, "You can't cover that bet.")
	assert.Contains(t, resp.Content, ResponseEmoji[types.ErrInsufficientFunds])
}

func TestNewErrorResponsePlainError(t *testing.T) {
	resp := NewErrorResponse(errors.New("something broke"))
	assert.True(t, resp.Ephemeral)
	assert.Contains(t, resp.Content, "something broke")
}

func TestSendResponseSetsEphemeralFlag(t *testing.T) {
	session := new(mocksession.SessionHandler)
	interaction := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{ID: "i1"}}

	session.On("InteractionRespond", interaction.Interaction, mock.MatchedBy(func(r *discordgo.InteractionResponse) bool {
		return r.Data.Flags == discordgo.MessageFlagsEphemeral
	})).Return(nil)

	err := SendResponse(session, interaction, NewEphemeralResponse("secret", nil))
	assert.NoError(t, err)
	session.AssertExpectations(t)
}
