package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/northpine-labs/linkvault-back/internal/db"
)

func TestRepositoryUpdateLeavesFieldsUntouched(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	user := s.mustRegister(t, "alice", "alice@example.com")
	tag := s.mustTag(t, user.ID, "Dev", "dev")

	repo := NewRepository[db.Tag](s.db, "tag", zap.NewNop().Sugar())

	fields := map[string]interface{}{"name": "Development"}
	updated, err := repo.Update(ctx, tag.ID, fields)
	require.NoError(t, err)
	assert.Equal(t, "Development", updated.Name)

	// The caller's map stays exactly as it was passed in.
	assert.Equal(t, map[string]interface{}{"name": "Development"}, fields)
}
