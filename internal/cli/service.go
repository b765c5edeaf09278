package cli

import "urdf2sem/internal/app"

// newAppService is swapped in tests.
var newAppService = app.NewService
