package interact

import "errors"

// Configuration errors. They are detected at construction, logged once, and
// permanently disable the affected capability on that instance.
var (
	ErrMissingHinge   = errors.New("door hinge reference is missing")
	ErrMissingSeat    = errors.New("vehicle seat reference is missing")
	ErrMissingMotion  = errors.New("vehicle motion component is missing")
	ErrMissingStore   = errors.New("possession store is missing")
	ErrMissingVehicle = errors.New("bay vehicle reference is missing")
	ErrMissingSpawn   = errors.New("bay spawn point is missing")
)
