package constants

const apiName = "cars-info"

// APIName returns the bracketed service tag that prefixes log messages.
func APIName() string {
	return "[" + apiName + "]"
}

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "carsinfo.CarService"
