// Package sections replaces the interior of marker-delimited regions in HTML
// pages. A region starts at <!-- BEGIN: id --> and ends at the next
// <!-- END: id -->.
package sections
