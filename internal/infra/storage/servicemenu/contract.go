package servicemenu

import "github.com/m04kA/BikeRepair-BookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
