package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorKinds(t *testing.T) {
	err := conflict("table %d is occupied", 5)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "table 5 is occupied", err.Error())

	wrapped := fmt.Errorf("seating: %w", err)
	assert.Equal(t, KindConflict, KindOf(wrapped))

	assert.Equal(t, KindStorage, KindOf(errors.New("disk full")))
}

func TestClassify(t *testing.T) {
	assert.Nil(t, classify(nil, "order"))
	assert.Equal(t, KindNotFound, KindOf(classify(gorm.ErrRecordNotFound, "order")))
	assert.Equal(t, KindConflict, KindOf(classify(gorm.ErrDuplicatedKey, "order")))

	storage := classify(errors.New("connection reset"), "order")
	assert.Equal(t, KindStorage, KindOf(storage))
	assert.ErrorContains(t, storage, "connection reset")

	own := invalid("bad")
	assert.Same(t, own, classify(own, "order"))
}
