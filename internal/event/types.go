// internal/event/types.go
package event

const (
	ProjectileFired     EventType = "ProjectileFired"
	EnemyHit            EventType = "EnemyHit"
	EnemyKilled         EventType = "EnemyKilled"
	ItemCollected       EventType = "ItemCollected"
	DoorStateChanged    EventType = "DoorStateChanged"
	LevelLoaded         EventType = "LevelLoaded"
	LevelCompleted      EventType = "LevelCompleted" // финиш активирован
	TrackerDisconnected EventType = "TrackerDisconnected"
)

// AllTypes - все типы событий, для подписчиков на всё подряд.
var AllTypes = []EventType{
	ProjectileFired, EnemyHit, EnemyKilled, ItemCollected,
	DoorStateChanged, LevelLoaded, LevelCompleted, TrackerDisconnected,
}
