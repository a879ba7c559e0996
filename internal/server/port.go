// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package server

import (
	"fmt"
	"net"
	"strconv"
)

// Listen probes the inclusive port range [portMin, portMax] on host and
// returns the first listener that binds, along with its port. The bound
// listener is handed to the HTTP server as-is; closing and re-binding would
// open a window for another process to take the port.
func Listen(host string, portMin, portMax int) (net.Listener, int, error) {
	if portMin > portMax {
		return nil, 0, fmt.Errorf("invalid port range %d-%d", portMin, portMax)
	}
	var lastErr error
	for port := portMin; port <= portMax; port++ {
		ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
		if err == nil {
			return ln, port, nil
		}
		lastErr = err
	}
	return nil, 0, fmt.Errorf("no free port in range %d-%d on %s: %w", portMin, portMax, host, lastErr)
}
