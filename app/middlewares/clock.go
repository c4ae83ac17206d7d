package middlewares

import "time"

// timeNow is swapped in tests to pin the subscription expiry check.
var timeNow = time.Now
