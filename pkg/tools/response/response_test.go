package response_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/response"
	"github.com/hamzaessahbaoui/travel-planner/pkg/travel"
)

func TestLogThinking(t *testing.T) {
	r := response.New(nil)

	for _, thinking := range []string{"", "need dates"} {
		ack, err := r.LogThinking(context.Background(), response.ModelThinkingArgs{Thinking: thinking})
		require.NoError(t, err)
		assert.True(t, ack.Success)
	}
}

func TestLogResponse(t *testing.T) {
	r := response.New(nil)

	ack, err := r.LogResponse(context.Background(), response.ModelResponseArgs{Response: "Here is your plan."})
	require.NoError(t, err)
	assert.True(t, ack.Success)

	_, err = r.LogResponse(context.Background(), response.ModelResponseArgs{Response: "  "})
	var verr *travel.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "response", verr.Field)
}
