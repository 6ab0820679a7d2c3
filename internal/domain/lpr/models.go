package lpr

// Submission carries the raw form fields of one /lpr request. All values are
// untrusted strings; an empty string means the field was absent.
type Submission struct {
	PlateNumber  string
	CarLogo      string
	Confidence   string
	CameraIP     string
	VehicleColor string
}

// Event is the canonical representation published on the bus. String fields
// are sanitized before the event is constructed and never mutated afterwards.
type Event struct {
	PlateNum     string   `json:"plate_num"`
	CarLogo      string   `json:"car_logo"`
	Confidence   *float64 `json:"confidence,omitempty"`
	CamIP        string   `json:"cam_ip"`
	VehicleBrand string   `json:"vehicle_brand"`
	VehicleColor string   `json:"vehicle_color"`
}

// CollectorEvent is the normalized payload sent to the external collector.
// ExecutionTime, Coordinates, VehicleModel and VehiclePlateColor are
// placeholders until the camera feed carries real values.
type CollectorEvent struct {
	EventTimestamp         string   `json:"eventTimestamp"`
	CameraIP               string   `json:"cameraIp"`
	VehiclePlateNumber     string   `json:"vehiclePlateNumber"`
	ImageURL               string   `json:"imageUrl"`
	SystemName             string   `json:"systemName"`
	VehicleType            string   `json:"vehicleType"`
	VehicleBrand           string   `json:"vehicleBrand"`
	VehicleColor           string   `json:"vehicleColor"`
	VehiclePlateColor      string   `json:"vehiclePlateColor"`
	Confidence             *float64 `json:"confidence"`
	ExecutionTime          int      `json:"executionTime"`
	Coordinates            string   `json:"coordinates"`
	VehicleModel           string   `json:"vehicleModel"`
	EngineLprExternalID    string   `json:"engineLprExternalId"`
	OldEngineLprExternalID *string  `json:"oldEngineLprExternalId,omitempty"`
}
