package main

import (
	"net"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
)

// connectionLimiter caps concurrent sessions per remote IP.
type connectionLimiter struct {
	limit int

	mu        sync.Mutex
	ipCounter map[string]int
}

func newConnectionLimiter(limit int) *connectionLimiter {
	return &connectionLimiter{limit: limit, ipCounter: make(map[string]int)}
}

func remoteIP(s ssh.Session) string {
	return addrIP(s.RemoteAddr())
}

func addrIP(addr net.Addr) string {
	if tcpAddr, ok := addr.(*net.TCPAddr); ok {
		return tcpAddr.IP.String()
	}
	return addr.String()
}

// acquire reserves a slot for ip and reports the count it tried to reach.
// A limit of zero or less disables the cap.
func (l *connectionLimiter) acquire(ip string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	attempted := l.ipCounter[ip] + 1
	if l.limit > 0 && attempted > l.limit {
		return attempted, false
	}
	l.ipCounter[ip] = attempted
	return attempted, true
}

func (l *connectionLimiter) release(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ipCounter[ip]--
	if l.ipCounter[ip] <= 0 {
		delete(l.ipCounter, ip)
	}
	return l.ipCounter[ip]
}

func (l *connectionLimiter) Middleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := remoteIP(s)

		count, ok := l.acquire(ip)
		if !ok {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", count, "current_limit", l.limit)
			s.Write([]byte(tooManyConnections(count, l.limit)))
			s.Close()
			return
		}

		log.Info("Connection accepted", "ip", ip, "current_count", count, "limit", l.limit)
		defer func() {
			log.Info("Connection closed and counter decremented", "ip", ip, "count_after", l.release(ip))
		}()
		next(s)
	}
}
