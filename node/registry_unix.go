//go:build linux
// +build linux

package node

import (
	"os"

	"golang.org/x/sys/unix"
)

const readEvents = unix.EPOLLPRI | unix.EPOLLIN

// Registry is a wrapper around epoll. It keeps track of the fds that are registered to epoll.
type Registry struct {
	epollFd  int
	epollSet map[int]uint32
}

func NewRegistry() (*Registry, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, os.NewSyscallError("epoll_create1", err)
	}
	return &Registry{
		epollFd:  epfd,
		epollSet: make(map[int]uint32),
	}, nil
}

// registerRead registers fd to epoll for read events.
func (r *Registry) registerRead(fd int) (err error) {
	if _, ok := r.epollSet[fd]; ok {
		err = r.ModRead(fd)
	} else {
		err = r.AddRead(fd)
	}
	if err != nil {
		return err
	}

	r.epollSet[fd] = readEvents
	return nil
}

// unregister removes fd from epoll.
func (r *Registry) unregister(fd int) error {
	if _, ok := r.epollSet[fd]; !ok {
		return nil
	}
	if err := r.Delete(fd); err != nil {
		return err
	}
	delete(r.epollSet, fd)
	return nil
}

// ready waits at most msec milliseconds and returns the fds with pending events.
// A zero msec never blocks.
func (r *Registry) ready(events []unix.EpollEvent, msec int) ([]int, error) {
	n, err := unix.EpollWait(r.epollFd, events, msec)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, os.NewSyscallError("epoll_wait", err)
	}
	fds := make([]int, 0, n)
	for i := 0; i < n; i++ {
		fds = append(fds, int(events[i].Fd))
	}
	return fds, nil
}

// Close unregisters every fd and closes the epoll fd. Registered fds are not closed.
func (r *Registry) Close() error {
	for fd := range r.epollSet {
		_ = r.unregister(fd)
	}
	return CloseFd(r.epollFd)
}

func (r *Registry) AddRead(fd int) error {
	return os.NewSyscallError("epoll_ctl add",
		unix.EpollCtl(r.epollFd, unix.EPOLL_CTL_ADD, fd, &unix.EpollEvent{Fd: int32(fd), Events: readEvents}))
}

func (r *Registry) ModRead(fd int) error {
	return os.NewSyscallError("epoll_ctl mod",
		unix.EpollCtl(r.epollFd, unix.EPOLL_CTL_MOD, fd, &unix.EpollEvent{Fd: int32(fd), Events: readEvents}))
}

func (r *Registry) Delete(fd int) error {
	return os.NewSyscallError("epoll_ctl del", unix.EpollCtl(r.epollFd, unix.EPOLL_CTL_DEL, fd, nil))
}
