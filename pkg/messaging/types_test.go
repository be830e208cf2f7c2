package messaging

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
)

// The wire shape is a contract with every producer on the bus, the field names
// must stay exactly as they are.
func TestChangeMessageWireShape(t *testing.T) {
	raw, err := sonic.Marshal(ChangeMessage{HouseId: 16, Operation: OperationIndex, Retry: 2})
	if err != nil {
		t.Fatal(err)
	}

	assert.JSONEq(t, `{"houseId":16,"operation":"INDEX","retry":2}`, string(raw))
}

func TestChangeMessageDecode(t *testing.T) {
	var msg ChangeMessage
	err := sonic.Unmarshal([]byte(`{"houseId":42,"operation":"REMOVE","retry":0}`), &msg)

	assert.NoError(t, err)
	assert.Equal(t, ChangeMessage{HouseId: 42, Operation: OperationRemove}, msg)
}

func TestTopicNamePrefixing(t *testing.T) {
	assert.Equal(t, "house_build", getName("", TopicHouseBuild))
	assert.Equal(t, "staging_house_build", getName("staging", TopicHouseBuild))
}
