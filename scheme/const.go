package scheme

import "math"

var inf = math.Inf(1)
