package messaging

type ChangeTopic string

// TopicHouseBuild carries index/remove change messages for houses. Producer
// and consumer sides must agree on this name.
const TopicHouseBuild ChangeTopic = "house_build"

const (
	OperationIndex  = "INDEX"
	OperationRemove = "REMOVE"
)

// MaxRetry bounds how many times a failed change is re-published before it is
// dropped with a terminal error.
const MaxRetry = 3

// ChangeMessage is the wire format on the change topic.
type ChangeMessage struct {
	HouseId   int64  `json:"houseId"`
	Operation string `json:"operation"`
	Retry     int    `json:"retry"`
}
