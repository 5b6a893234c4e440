// Package watch imports lesson documents dropped into an inbox directory.
//
// The watcher listens for create and write events with fsnotify, waits
// until a file has been quiet for a short debounce period, then reads it
// and hands it to the quiz service. Directories, hidden files, chmod-only
// events and removals are ignored.
package watch
