package enum

type EntityType string

const (
	JOB_APPLICATION EntityType = "JOB_APPLICATION"
)

func (entityType EntityType) String() string {
	return string(entityType)
}
