package exercises

// Exercise is the catalog entity as persisted: one equipment tag from the
// fixed vocabulary (legacy rows may still hold a comma-joined list).
type Exercise struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	BodyArea    string       `json:"bodyArea"`
	Type        ExerciseType `json:"type"`
	Description string       `json:"description"`
	VideoURL    string       `json:"videoUrl"`
	Equipment   string       `json:"equipment"`
}

// PlanInfo carries the set/rep targets of the plan entry a result row was
// joined with.
type PlanInfo struct {
	Sets int `json:"sets"`
	Reps int `json:"reps"`
}

// ExerciseView is one result row of the filtered catalog query. An exercise
// joined to multiple plan entries yields one view per entry; an exercise
// with no plan entry yields a single view with a nil Plan.
type ExerciseView struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	BodyArea    string    `json:"bodyArea"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	VideoURL    string    `json:"videoUrl"`
	Equipment   []string  `json:"equipment"`
	Plan        *PlanInfo `json:"plan"`
}

// ExerciseType can be one of:
//   - strength
//   - cardio
type ExerciseType string

const (
	ExerciseTypeStrength ExerciseType = "strength"
	ExerciseTypeCardio   ExerciseType = "cardio"
)

func (et ExerciseType) String() string {
	return string(et)
}

func (et ExerciseType) IsValid() bool {
	switch et {
	case ExerciseTypeStrength, ExerciseTypeCardio:
		return true
	default:
		return false
	}
}

// the fixed equipment vocabulary
const (
	EquipmentBodyweightOnly  = "Bodyweight Only"
	EquipmentDumbbells       = "Dumbbells"
	EquipmentBarbells        = "Barbells"
	EquipmentResistanceBands = "Resistance Bands"
	EquipmentGymMachines     = "Gym Machines"
	EquipmentCardioMachines  = "Cardio Machines"
)

var equipmentVocabulary = map[string]bool{
	EquipmentBodyweightOnly:  true,
	EquipmentDumbbells:       true,
	EquipmentBarbells:        true,
	EquipmentResistanceBands: true,
	EquipmentGymMachines:     true,
	EquipmentCardioMachines:  true,
}

func IsValidEquipmentTag(tag string) bool {
	return equipmentVocabulary[tag]
}
