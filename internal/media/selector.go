package media

import (
	"context"
	"strings"
)

// userFacingHints are matched case-insensitively against device names to
// prefer a camera pointed at the user.
var userFacingHints = []string{"front", "user", "facing"}

// SelectCamera picks the preferred capture device from the enumerated list:
// the first device whose name suggests a user-facing camera, otherwise the
// first device available. Returns ErrNoDeviceFound when the list is empty.
//
// Selection is re-run for every capture attempt; device availability changes
// between recordings and results are never cached.
func SelectCamera(ctx context.Context, enumerator Enumerator) (Device, error) {
	devices, err := enumerator.Enumerate(ctx)
	if err != nil {
		return Device{}, err
	}
	return Pick(devices)
}

// Pick applies the selection policy to an already-enumerated device list.
func Pick(devices []Device) (Device, error) {
	if len(devices) == 0 {
		return Device{}, ErrNoDeviceFound
	}
	for _, device := range devices {
		name := strings.ToLower(device.Name)
		for _, hint := range userFacingHints {
			if strings.Contains(name, hint) {
				return device, nil
			}
		}
	}
	return devices[0], nil
}
